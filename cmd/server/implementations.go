package main

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/scenekit/scene-porter/internal/protocol"
	"github.com/scenekit/scene-porter/internal/ws"
)

// BroadcasterImpl implements Broadcaster using the websocket hub
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(eventType string, payload interface{}) {
	envelope := protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		EventID:  0,
		Type:     eventType,
		Payload:  payload,
	}
	if err := b.hub.BroadcastEnvelope(envelope); err != nil {
		log.Printf("failed to broadcast %s: %v", eventType, err)
	}
}

// LoggerImpl implements Logger using standard log package
type LoggerImpl struct{}

func NewLogger() *LoggerImpl {
	return &LoggerImpl{}
}

func (l *LoggerImpl) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// SequenceGeneratorImpl implements SequenceGenerator using atomic counter
type SequenceGeneratorImpl struct {
	counter uint64
}

func NewSequenceGenerator() *SequenceGeneratorImpl {
	return &SequenceGeneratorImpl{}
}

func (sg *SequenceGeneratorImpl) Next() uint64 {
	return atomic.AddUint64(&sg.counter, 1)
}

func (sg *SequenceGeneratorImpl) Current() uint64 {
	return atomic.LoadUint64(&sg.counter)
}

// staticConfirmer answers the padding prompt with a fixed decision carried
// on the request (confirm=true), standing in for a blocking dialog.
type staticConfirmer struct {
	confirmed bool
}

func (c staticConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	return c.confirmed, nil
}
