package pipeline

import (
	"encoding/json"
	"fmt"
)

// KindDecisionTree is the artifact kind for serialized decision trees.
const KindDecisionTree = "decision_tree"

func init() {
	Register(KindDecisionTree, decodeTree)
}

// treeNode is one node in a flattened decision tree. A node is either a
// leaf (Leaf set) or a split: numeric splits carry Threshold (go left when
// value <= threshold), categorical splits carry In (go left when the value
// is in the set).
type treeNode struct {
	Leaf      string   `json:"leaf,omitempty"`
	Feature   string   `json:"feature,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	In        []string `json:"in,omitempty"`
	Left      int      `json:"left,omitempty"`
	Right     int      `json:"right,omitempty"`
}

type treeSpec struct {
	Features []featureSpec `json:"features"`
	Nodes    []treeNode    `json:"nodes"`
}

// treePipeline walks a flattened decision tree from node 0.
type treePipeline struct {
	nodes    []treeNode
	features map[string]featureSpec
}

func decodeTree(spec []byte) (Pipeline, error) {
	var s treeSpec
	if err := json.Unmarshal(spec, &s); err != nil {
		return nil, err
	}
	byName, err := indexFeatures(s.Features)
	if err != nil {
		return nil, err
	}
	if len(s.Nodes) == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}
	for i, n := range s.Nodes {
		if n.Leaf != "" {
			continue
		}
		f, ok := byName[n.Feature]
		if !ok {
			return nil, fmt.Errorf("node %d: undeclared feature %q", i, n.Feature)
		}
		switch f.Type {
		case featureNumeric:
			if n.Threshold == nil {
				return nil, fmt.Errorf("node %d: numeric split without threshold", i)
			}
		case featureCategorical:
			if len(n.In) == 0 {
				return nil, fmt.Errorf("node %d: categorical split without membership set", i)
			}
		}
		// Children must point forward so a walk always terminates.
		if n.Left <= i || n.Left >= len(s.Nodes) || n.Right <= i || n.Right >= len(s.Nodes) {
			return nil, fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return &treePipeline{nodes: s.Nodes, features: byName}, nil
}

func (p *treePipeline) Predict(row Row) (string, error) {
	i := 0
	for {
		n := p.nodes[i]
		if n.Leaf != "" {
			return n.Leaf, nil
		}
		f := p.features[n.Feature]
		var left bool
		switch f.Type {
		case featureNumeric:
			v, err := f.number(row)
			if err != nil {
				return "", err
			}
			left = v <= *n.Threshold
		case featureCategorical:
			v, err := f.category(row)
			if err != nil {
				return "", err
			}
			for _, c := range n.In {
				if c == v {
					left = true
					break
				}
			}
		}
		if left {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
