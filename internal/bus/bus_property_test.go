package bus

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/jmylchreest/edgeui/internal/model"
)

// For any interleaving of subscribe, unsubscribe and notify operations, each
// observer receives exactly the notifications emitted while it was
// subscribed, in emission order.
func TestProperty_ObserversSeeExactlyTheirWindow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := New(nil)

		type tracked struct {
			sub  *Subscription
			got  []string
			want []string
		}
		var observers []*tracked

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		emitted := 0

		for i := 0; i < steps; i++ {
			op := rapid.SampledFrom([]string{"subscribe", "unsubscribe", "notify"}).Draw(rt, fmt.Sprintf("op_%d", i))

			switch op {
			case "subscribe":
				tr := &tracked{}
				tr.sub = b.Subscribe(ObserverFunc(func(n model.Notification) error {
					tr.got = append(tr.got, n.Message)
					return nil
				}))
				observers = append(observers, tr)

			case "unsubscribe":
				if len(observers) == 0 {
					continue
				}
				idx := rapid.IntRange(0, len(observers)-1).Draw(rt, fmt.Sprintf("victim_%d", i))
				observers[idx].sub.Unsubscribe()

			case "notify":
				msg := fmt.Sprintf("n%d", emitted)
				emitted++
				for _, tr := range observers {
					if tr.sub.Active() {
						tr.want = append(tr.want, msg)
					}
				}
				b.Notify(model.Notification{Type: model.TypeInfo, Message: msg})
			}
		}

		for i, tr := range observers {
			if len(tr.got) != len(tr.want) {
				rt.Fatalf("observer %d got %v, want %v", i, tr.got, tr.want)
			}
			for j := range tr.want {
				if tr.got[j] != tr.want[j] {
					rt.Fatalf("observer %d got %v, want %v", i, tr.got, tr.want)
				}
			}
		}
	})
}
