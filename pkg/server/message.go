package server

import (
	"fmt"

	"github.com/roffe/speedometer/pkg/colors"
	"github.com/roffe/speedometer/pkg/gaugemath"
	"github.com/roffe/speedometer/pkg/gaugestate"
)

type MessageType string

const (
	MessageTypeLayout MessageType = "layout"
	MessageTypeFrame  MessageType = "frame"
	MessageTypeError  MessageType = "error"

	// client to server
	MessageTypeSet  MessageType = "set"
	MessageTypeZero MessageType = "zero"
	MessageTypeMax  MessageType = "max"
)

// LayoutMessage is sent once per connection, before any frame.
type LayoutMessage struct {
	Type   MessageType      `json:"type"`
	Config gaugemath.Config `json:"config"`
	Ticks  []TickMessage    `json:"ticks"`
	Labels []LabelMessage   `json:"labels"`
}

type TickMessage struct {
	gaugemath.TickMark
	Color string `json:"color"`
}

type LabelMessage struct {
	gaugemath.Label
	Color string `json:"color"`
}

type FrameMessage struct {
	Type MessageType `json:"type"`
	gaugestate.Frame
	Color string `json:"color"`
}

type ErrorMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// Command is what clients send to move the gauge.
type Command struct {
	Type  MessageType `json:"type"`
	Value float64     `json:"value,omitempty"`
}

func (c Command) String() string {
	if c.Type == MessageTypeSet {
		return fmt.Sprintf("%s %g", c.Type, c.Value)
	}
	return string(c.Type)
}

func newLayoutMessage(cfg gaugemath.Config) *LayoutMessage {
	m := &LayoutMessage{Type: MessageTypeLayout, Config: cfg}
	for _, t := range cfg.Ticks() {
		m.Ticks = append(m.Ticks, TickMessage{TickMark: t, Color: colors.Hex(t.Color())})
	}
	for _, l := range cfg.Labels() {
		m.Labels = append(m.Labels, LabelMessage{Label: l, Color: colors.Hex(l.Color())})
	}
	return m
}

func newFrameMessage(f gaugestate.Frame) *FrameMessage {
	return &FrameMessage{Type: MessageTypeFrame, Frame: f, Color: colors.Hex(f.Color)}
}
