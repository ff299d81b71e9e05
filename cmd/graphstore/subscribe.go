package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/graphstore/internal/eventbus"
	"github.com/steveyegge/graphstore/internal/storage/memory"
	"github.com/steveyegge/graphstore/internal/types"
)

var subscribeTopic string

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe to node events, then insert/update/delete a demo node to watch delivery",
	Long: `subscribe starts a store, registers a subscriber on the requested
topic, then drives a short insert/update/delete sequence against a demo
node so there's something to watch. A single CLI process is the only
way to observe the bus in action, since nothing persists between
invocations.`,
	RunE: runSubscribe,
}

func init() {
	subscribeCmd.Flags().StringVar(&subscribeTopic, "topic", "node", "topic form: any|node|edge|graph")
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	ms, ok := store.(*memory.Store)
	if !ok {
		return fmt.Errorf("subscribe requires the memory adapter")
	}

	var topic eventbus.Topic
	switch subscribeTopic {
	case "any":
		topic = eventbus.TopicAnyPattern()
	case "edge":
		topic = eventbus.TopicKindPattern(types.KindEdge)
	case "graph":
		topic = eventbus.TopicKindPattern(types.KindGraph)
	default:
		topic = eventbus.TopicKindPattern(types.KindNode)
	}

	received := make(chan *eventbus.Event, 16)
	ms.Bus().Subscribe(topic, eventbus.SubscribeOptions{}, eventbus.SubscriberFunc(func(e *eventbus.Event) {
		received <- e
	}))

	ctx := context.Background()
	node, err := store.Insert(ctx, types.KindNode, "", types.Node{Data: map[string]interface{}{"name": "demo"}})
	if err != nil {
		return err
	}
	n := node.(types.Node)
	n.Data["name"] = "demo-updated"
	if _, err := store.Update(ctx, types.KindNode, "", n); err != nil {
		return err
	}
	if err := store.Delete(ctx, types.KindNode, n.ID); err != nil {
		return err
	}

	deadline := time.After(2 * time.Second)
	for i := 0; i < 3; i++ {
		select {
		case e := <-received:
			fmt.Fprintln(cmd.OutOrStdout(), accentStyle.Render(fmt.Sprintf("event: kind=%s entity=%s id=%s", e.Kind, e.EntityKind, e.EntityID)))
		case <-deadline:
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("timed out waiting for remaining events"))
			return nil
		}
	}
	return nil
}
