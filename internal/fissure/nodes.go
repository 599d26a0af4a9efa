package fissure

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/validation"
)

// Node is one star chart node.
type Node struct {
	Name    string `json:"name"`
	Planet  string `json:"planet"`
	Tileset string `json:"tileset"`
	Enemy   string `json:"enemy"`
	Mission string `json:"mission"`
}

// NodeFile is the on-disk solnode table.
type NodeFile struct {
	Version string `json:"version"`
	Nodes   []Node `json:"nodes"`
}

// Nodes is an immutable case-insensitive index of star chart nodes, used to
// fill in fields the feed leaves out.
type Nodes struct {
	byName map[string]Node
}

// NewNodes indexes nodes by name.
func NewNodes(nodes []Node) (*Nodes, error) {
	n := &Nodes{byName: make(map[string]Node, len(nodes))}
	for _, node := range nodes {
		key := strings.ToLower(strings.TrimSpace(node.Name))
		if key == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrDataIntegrity, ErrMsgEmptyNodeName)
		}
		if _, dup := n.byName[key]; dup {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrDataIntegrity, ErrMsgDuplicateNode, node.Name)
		}
		n.byName[key] = node
	}
	return n, nil
}

// LoadNodes reads, schema-validates, and indexes the solnode table at path.
func LoadNodes(path string, schemas validation.SchemaValidator) (*Nodes, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextReadNodes, err)
	}
	if schemas != nil {
		if err := schemas.ValidateBytes(raw, NodesSchemaPath); err != nil {
			return nil, fmt.Errorf("%s for %s: %w", ErrContextNodesSchema, path, err)
		}
	}

	var file NodeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextParseNodes, err)
	}
	nodes, err := NewNodes(file.Nodes)
	if err != nil {
		return nil, err
	}
	logger.Info(LogMsgNodesLoaded, LogFieldPath, path, LogFieldCount, nodes.Len())
	return nodes, nil
}

// Lookup finds a node by name, ignoring case.
func (n *Nodes) Lookup(name string) (Node, bool) {
	if n == nil {
		return Node{}, false
	}
	node, ok := n.byName[strings.ToLower(strings.TrimSpace(name))]
	return node, ok
}

// Len is the number of indexed nodes.
func (n *Nodes) Len() int {
	if n == nil {
		return 0
	}
	return len(n.byName)
}

// SplitNode parses the feed's "Node (Planet)" form. A string without a
// parenthesized planet is returned whole as the node.
func SplitNode(s string) (node, planet string) {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return s, ""
	}
	return strings.TrimSpace(s[:open]), strings.TrimSpace(s[open+1 : len(s)-1])
}
