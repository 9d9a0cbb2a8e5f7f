package internal

import (
	"encoding/json"
	"fmt"
)

// MappingNode is one entry of a conversation mapping. Message is nil for
// structural nodes (the root, or nodes whose message is empty).
type MappingNode struct {
	ID      string
	Message *RawMessage
}

// NodeArena holds the nodes of one mapping keyed by id, in document order.
// Parent/child links are not kept; ordering is by timestamp alone.
type NodeArena struct {
	order []string
	nodes map[string]*MappingNode
}

// NewNodeArena creates an empty NodeArena
func NewNodeArena() *NodeArena {
	return &NodeArena{
		nodes: make(map[string]*MappingNode),
	}
}

// Set stores a node. Re-setting an id keeps its original position.
func (a *NodeArena) Set(node *MappingNode) {
	if _, ok := a.nodes[node.ID]; !ok {
		a.order = append(a.order, node.ID)
	}
	a.nodes[node.ID] = node
}

// Get retrieves a node by id
func (a *NodeArena) Get(id string) (*MappingNode, bool) {
	node, ok := a.nodes[id]
	return node, ok
}

// Len returns the number of nodes in the arena
func (a *NodeArena) Len() int {
	return len(a.order)
}

// First returns the first node in document order
func (a *NodeArena) First() (*MappingNode, bool) {
	if len(a.order) == 0 {
		return nil, false
	}
	return a.nodes[a.order[0]], true
}

// Nodes returns every node in document order
func (a *NodeArena) Nodes() []*MappingNode {
	nodes := make([]*MappingNode, 0, len(a.order))
	for _, id := range a.order {
		nodes = append(nodes, a.nodes[id])
	}
	return nodes
}

// BuildNodeArena decodes a mapping object into an arena. Nodes that are not
// objects, or whose message is missing, empty or not an object, are kept as
// structural nodes.
func BuildNodeArena(mapping json.RawMessage) (*NodeArena, error) {
	var obj OrderedObject
	if err := json.Unmarshal(mapping, &obj); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}

	arena := NewNodeArena()
	for _, field := range obj {
		node := &MappingNode{ID: field.Key}
		node.Message = decodeNodeMessage(field.Key, field.Value)
		arena.Set(node)
	}
	return arena, nil
}

func decodeNodeMessage(nodeID string, raw json.RawMessage) *RawMessage {
	if kindOf(raw) != kindObject {
		LogDebug("Mapping node %s is not an object, treating as structural", nodeID)
		return nil
	}
	var node OrderedObject
	if err := json.Unmarshal(raw, &node); err != nil {
		LogDebug("Failed to decode mapping node %s: %v", nodeID, err)
		return nil
	}
	message, ok := node.Get("message")
	if !ok || kindOf(message) != kindObject || !truthy(message) {
		return nil
	}
	var msg RawMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		LogDebug("Failed to decode message of node %s: %v", nodeID, err)
		return nil
	}
	return &msg
}
