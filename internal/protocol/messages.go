// Package protocol defines the messages exchanged between the core and the
// dashboard panel.
//
// Each direction is a closed set: Outbound is implemented only by Init,
// ProjectsUpdated and ConfigUpdated, Inbound only by Ready, OpenProject and
// ConfirmDelete. On the wire every message is a JSON object whose "type"
// field carries the tag.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazyvibe/startboard/internal/model"
)

// Wire tags.
const (
	TypeInit            = "init"
	TypeProjectsUpdated = "projectsUpdated"
	TypeConfigUpdated   = "configUpdated"
	TypeReady           = "ready"
	TypeOpenProject     = "openProject"
	TypeConfirmDelete   = "confirmDelete"
)

// ErrUnknownMessage is returned when decoding a message with an unknown tag.
var ErrUnknownMessage = errors.New("unknown message type")

// Outbound is a message sent from the core to the panel.
type Outbound interface {
	Type() string
	isOutbound()
}

// Inbound is a message sent from the panel to the core.
type Inbound interface {
	Type() string
	isInbound()
}

// ---------- Outbound ----------

// Init answers a panel's Ready with the full initial state.
type Init struct {
	Projects []model.Project
	Config   model.AsciiArtConfig
}

// ProjectsUpdated carries the project list after an add or remove.
type ProjectsUpdated struct {
	Projects []model.Project
}

// ConfigUpdated carries the splash configuration after it changed.
type ConfigUpdated struct {
	Config model.AsciiArtConfig
}

func (Init) Type() string            { return TypeInit }
func (ProjectsUpdated) Type() string { return TypeProjectsUpdated }
func (ConfigUpdated) Type() string   { return TypeConfigUpdated }

func (Init) isOutbound()            {}
func (ProjectsUpdated) isOutbound() {}
func (ConfigUpdated) isOutbound()   {}

func nonNil(projects []model.Project) []model.Project {
	if projects == nil {
		return []model.Project{}
	}
	return projects
}

func (m Init) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string               `json:"type"`
		Projects []model.Project      `json:"projects"`
		Config   model.AsciiArtConfig `json:"config"`
	}{TypeInit, nonNil(m.Projects), m.Config})
}

func (m ProjectsUpdated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string          `json:"type"`
		Projects []model.Project `json:"projects"`
	}{TypeProjectsUpdated, nonNil(m.Projects)})
}

func (m ConfigUpdated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string               `json:"type"`
		Config model.AsciiArtConfig `json:"config"`
	}{TypeConfigUpdated, m.Config})
}

// ---------- Inbound ----------

// Ready is the panel's first message after it loads.
type Ready struct{}

// OpenProject asks the core to open a project.
type OpenProject struct {
	ProjectID string `json:"projectId"`
}

// ConfirmDelete asks the core to confirm and remove a project.
type ConfirmDelete struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
}

func (Ready) Type() string         { return TypeReady }
func (OpenProject) Type() string   { return TypeOpenProject }
func (ConfirmDelete) Type() string { return TypeConfirmDelete }

func (Ready) isInbound()         {}
func (OpenProject) isInbound()   {}
func (ConfirmDelete) isInbound() {}

func (Ready) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{TypeReady})
}

func (m OpenProject) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		ProjectID string `json:"projectId"`
	}{TypeOpenProject, m.ProjectID})
}

func (m ConfirmDelete) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		ProjectID   string `json:"projectId"`
		ProjectName string `json:"projectName"`
	}{TypeConfirmDelete, m.ProjectID, m.ProjectName})
}

// DecodeInbound parses the wire form of an inbound message.
func DecodeInbound(data []byte) (Inbound, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	switch envelope.Type {
	case TypeReady:
		return Ready{}, nil
	case TypeOpenProject:
		var m OpenProject
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", envelope.Type, err)
		}
		return m, nil
	case TypeConfirmDelete:
		var m ConfirmDelete
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", envelope.Type, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, envelope.Type)
	}
}
