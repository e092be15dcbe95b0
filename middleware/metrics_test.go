package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/strandhttp/strand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("records counter and histogram per request", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		app := strand.New()
		require.NoError(t, app.Get("/", func(_ context.Context, _ *strand.Request) (any, error) {
			return "ok", nil
		}))

		in, out := Metrics(WithRegistry(reg), WithNamespace("test"))
		app.UseIncoming(in)
		app.UseOutgoing(out)

		app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/"})
		app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/missing"})

		families, err := reg.Gather()
		require.NoError(t, err)

		byName := map[string]bool{}
		var total float64
		for _, family := range families {
			byName[family.GetName()] = true
			if family.GetName() == "test_requests_total" {
				for _, metric := range family.GetMetric() {
					total += metric.GetCounter().GetValue()
				}
			}
		}

		assert.True(t, byName["test_requests_total"])
		assert.True(t, byName["test_request_duration_seconds"])
		assert.Equal(t, float64(2), total)
	})

	t.Run("status label distinguishes outcomes", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		app := strand.New()
		in, out := Metrics(WithRegistry(reg))
		app.UseIncoming(in)
		app.UseOutgoing(out)

		app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/missing"})

		families, err := reg.Gather()
		require.NoError(t, err)

		found := false
		for _, family := range families {
			if family.GetName() != "strand_requests_total" {
				continue
			}
			for _, metric := range family.GetMetric() {
				for _, label := range metric.GetLabel() {
					if label.GetName() == "status" && label.GetValue() == "404" {
						found = true
					}
				}
			}
		}
		assert.True(t, found, "expected a 404-labelled counter sample")
	})
}
