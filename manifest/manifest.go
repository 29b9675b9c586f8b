// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest extracts the analysis-relevant parts of a decoded
// AndroidManifest.xml: the package name, the requested permissions, and
// the four component kinds with their intent filters.
package manifest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dexflow/dexflow/axml"
)

// Manifest is the extracted manifest model.
type Manifest struct {
	Package     string      `json:"pkg,omitempty"`
	Permissions []string    `json:"prm"`
	Activities  []Component `json:"act"`
	Services    []Component `json:"svc"`
	Receivers   []Component `json:"rcv"`
	Providers   []Component `json:"prv"`
}

// Component is a manifest-declared entry class. Its name is rewritten
// relative to the package: a name beginning with the package prefix has
// the prefix stripped (keeping a leading dot), any other name is kept
// verbatim.
type Component struct {
	Name          string         `json:"name"`
	IntentFilters []IntentFilter `json:"intent_filters,omitempty"`
	Metadata      *Metadata      `json:"metadata,omitempty"`
	Permission    string         `json:"permission,omitempty"`
}

// IntentFilter records the action of an intent-filter element.
type IntentFilter struct {
	Action string `json:"action"`
}

// Metadata records the name of a meta-data element.
type Metadata struct {
	Name string `json:"name"`
}

const permissionPrefix = "android.permission."

// Parse decodes a binary AndroidManifest.xml and extracts the model.
func Parse(data []byte) (*Manifest, error) {
	root, err := axml.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromXML(root), nil
}

// FromXML extracts the manifest model from a decoded document root.
func FromXML(root *axml.Node) *Manifest {
	m := &Manifest{
		Package: root.Attributes["package"],
	}
	perms := make(map[string]struct{})
	for _, node := range root.Children {
		switch node.Tag {
		case "uses-permission":
			name := node.Attributes["android:name"]
			if rest, ok := cutPrefix(name, permissionPrefix); ok {
				perms[rest] = struct{}{}
			}
		case "application":
			for _, child := range node.Children {
				switch child.Tag {
				case "activity":
					m.Activities = appendComponent(m.Activities, child, m.Package)
				case "service":
					m.Services = appendComponent(m.Services, child, m.Package)
				case "receiver":
					m.Receivers = appendComponent(m.Receivers, child, m.Package)
				case "provider":
					m.Providers = appendComponent(m.Providers, child, m.Package)
				}
			}
		}
	}
	m.Permissions = make([]string, 0, len(perms))
	for p := range perms {
		m.Permissions = append(m.Permissions, p)
	}
	sort.Strings(m.Permissions)
	return m
}

func appendComponent(list []Component, node *axml.Node, pkg string) []Component {
	name := node.Attributes["android:name"]
	if name == "" {
		return list
	}
	if pkg != "" {
		if rest, ok := cutPrefix(name, pkg); ok {
			name = rest
		}
	}
	c := Component{
		Name:       name,
		Permission: node.Attributes["android:permission"],
	}
	for _, child := range node.Children {
		switch child.Tag {
		case "intent-filter":
			c.IntentFilters = append(c.IntentFilters, intentFilter(child))
		case "meta-data":
			c.Metadata = &Metadata{Name: child.Attributes["android:name"]}
		}
	}
	return append(list, c)
}

func intentFilter(node *axml.Node) IntentFilter {
	for _, child := range node.Children {
		if child.Tag == "action" {
			return IntentFilter{Action: child.Attributes["android:name"]}
		}
	}
	return IntentFilter{}
}

// Components returns the union of the four component lists.
func (m *Manifest) Components() []Component {
	out := make([]Component, 0,
		len(m.Activities)+len(m.Services)+len(m.Receivers)+len(m.Providers))
	out = append(out, m.Activities...)
	out = append(out, m.Services...)
	out = append(out, m.Receivers...)
	return append(out, m.Providers...)
}

// ComponentRegexes compiles one regex per component name, with dots
// replaced by slashes so the patterns match class descriptors. A single
// failing compilation discards the whole list: the flattening proceeds
// without manifest bias.
func (m *Manifest) ComponentRegexes() []*regexp.Regexp {
	components := m.Components()
	regexes := make([]*regexp.Regexp, 0, len(components))
	for _, c := range components {
		re, err := regexp.Compile(strings.ReplaceAll(c.Name, ".", "/"))
		if err != nil {
			logger.Printf("manifest: bad component pattern %q, dropping manifest bias: %v", c.Name, err)
			return nil
		}
		regexes = append(regexes, re)
	}
	return regexes
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
