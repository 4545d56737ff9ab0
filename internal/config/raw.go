package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PatternList supports either:
//
//	ignored_windows: "Notepad"
//
// or:
//
//	ignored_windows:
//	  - "Notepad"
//	  - "^Picture-in-picture"
//
// Entries that are not strings are collected in Invalid rather than failing
// the whole file.
type PatternList struct {
	Values  []string
	Invalid []string
}

func (l *PatternList) UnmarshalYAML(value *yaml.Node) error {
	*l = PatternList{}
	switch value.Kind {
	case 0:
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil
		}
		if value.Tag != "!!str" {
			l.Invalid = append(l.Invalid, describeNode(value))
			return nil
		}
		l.Values = []string{value.Value}
	case yaml.SequenceNode:
		l.Values = make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				l.Invalid = append(l.Invalid, describeNode(item))
				continue
			}
			l.Values = append(l.Values, item.Value)
		}
	default:
		l.Invalid = append(l.Invalid, describeNode(value))
	}
	return nil
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return fmt.Sprintf("mapping at line %d", n.Line)
	case yaml.SequenceNode:
		return fmt.Sprintf("sequence at line %d", n.Line)
	default:
		return fmt.Sprintf("%q at line %d", n.Value, n.Line)
	}
}

// RawConfig is the file as written. A nil field means the key was absent or
// could not be decoded.
type RawConfig struct {
	BorderWidth    *int         `yaml:"window_border_width"`
	BorderRadius   *int         `yaml:"window_border_radius"`
	IgnoredWindows *PatternList `yaml:"ignored_windows"`
	LogLevel       *string      `yaml:"log_level"`
	LogFile        *string      `yaml:"log_file"`
}

// decodeRaw decodes each known top-level key on its own so a bad value only
// costs that key. Problems are returned as warnings; nothing here is fatal.
func decodeRaw(data []byte) (RawConfig, []Warning) {
	var raw RawConfig
	var warnings []Warning

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return raw, append(warnings, Warning{Message: fmt.Sprintf("failed to parse yaml, using defaults: %v", err)})
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return raw, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return raw, nil
	}
	if root.Kind != yaml.MappingNode {
		return raw, append(warnings, Warning{Line: root.Line, Message: "top level must be a mapping, using defaults"})
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var err error
		switch key.Value {
		case "window_border_width":
			raw.BorderWidth, err = decodeField[int](val)
		case "window_border_radius":
			raw.BorderRadius, err = decodeField[int](val)
		case "ignored_windows":
			raw.IgnoredWindows, err = decodeField[PatternList](val)
		case "log_level":
			raw.LogLevel, err = decodeField[string](val)
		case "log_file":
			raw.LogFile, err = decodeField[string](val)
		default:
			continue
		}
		if err != nil {
			warnings = append(warnings, Warning{Path: key.Value, Line: val.Line, Message: fmt.Sprintf("ignored: %v", err)})
		}
	}
	return raw, warnings
}

func decodeField[T any](node *yaml.Node) (*T, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
