// Package protocol defines the JSON messages exchanged between the viewer
// service and its browser clients.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vitrinelabs/vitrine/pkg/math"
)

// Client event types.
const (
	EventSelect  = "select"
	EventSession = "session"
	EventFrame   = "frame"
	EventPlace   = "place"
	EventScale   = "scale"
)

// Scale event directions.
const (
	ScaleIncrease = "increase"
	ScaleDecrease = "decrease"
)

// Event is one message from a client. Type selects which of the remaining
// fields carry meaning.
type Event struct {
	Type string `json:"type"`

	// select
	ID string `json:"id,omitempty"`

	// session
	Presenting bool `json:"presenting,omitempty"`
	HitTest    bool `json:"hitTest,omitempty"`

	// frame: the hit-test result as a column-major world transform, absent
	// when the frame produced no hit.
	Hit *[16]float32 `json:"hit,omitempty"`

	// scale
	Direction string `json:"direction,omitempty"`
}

// DecodeEvent parses a client message.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("decode event: missing type")
	}
	return ev, nil
}

// HitMatrix returns the frame's hit transform.
func (ev Event) HitMatrix() (math.Mat4, bool) {
	if ev.Hit == nil {
		return math.Mat4{}, false
	}
	return math.Mat4(*ev.Hit), true
}

// Pose is a rigid transform on the wire: position x, y, z and orientation
// quaternion x, y, z, w.
type Pose struct {
	Position    [3]float32 `json:"position"`
	Orientation [4]float32 `json:"orientation"`
}

// PoseFrom converts an internal pose to its wire form.
func PoseFrom(p math.Pose) Pose {
	return Pose{
		Position:    [3]float32{p.Position.X, p.Position.Y, p.Position.Z},
		Orientation: [4]float32{p.Orientation.X, p.Orientation.Y, p.Orientation.Z, p.Orientation.W},
	}
}

// Product mirrors a catalog entry on the wire.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ModelURI string `json:"modelUri"`
}

// Catalog is the product list section of a snapshot.
type Catalog struct {
	Items    []Product `json:"items"`
	Selected string    `json:"selected,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Session is the AR session section of a snapshot.
type Session struct {
	Presenting bool `json:"presenting"`
	HitTest    bool `json:"hitTest"`
}

// Placement is the state machine section of a snapshot.
type Placement struct {
	Phase   string `json:"phase"`
	Reticle *Pose  `json:"reticle,omitempty"`
	Anchor  *Pose  `json:"anchor,omitempty"`
}

// ModelSummary describes a decoded model without its geometry.
type ModelSummary struct {
	Name       string   `json:"name,omitempty"`
	Clips      []string `json:"clips,omitempty"`
	Vertices   int      `json:"vertices"`
	Primitives int      `json:"primitives"`
}

// Normalize is the corrective transform that centers and fits a slot's
// model.
type Normalize struct {
	Translation [3]float32 `json:"translation"`
	Scale       float32    `json:"scale"`
}

// Slot is one fault-isolated asset slot: the main viewport or one gallery
// entry.
type Slot struct {
	Product   *Product      `json:"product,omitempty"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Model     *ModelSummary `json:"model,omitempty"`
	Normalize *Normalize    `json:"normalize,omitempty"`
}

// State is the full viewer snapshot sent to every client whenever something
// changed.
type State struct {
	Seq       uint64    `json:"seq"`
	Catalog   Catalog   `json:"catalog"`
	Session   Session   `json:"session"`
	Placement Placement `json:"placement"`
	Scale     float32   `json:"scale"`
	Viewport  Slot      `json:"viewport"`
	Gallery   []Slot    `json:"gallery"`
}

// Encode marshals the snapshot for the wire.
func (s State) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}
