// Package resilience provides a circuit breaker for upstream dependencies.
//
// The breaker guards calls to services that can fail in bursts, like the AI
// completion backend. A run of consecutive failures opens the circuit and
// rejects requests immediately; after a cooldown a limited number of probe
// requests decide whether the upstream has recovered.
//
// Example Usage:
//
//	breaker := resilience.New("ai", resilience.Settings{
//	    FailureThreshold: 5,
//	    Cooldown:         30 * time.Second,
//	})
//	result, err := breaker.Execute(func() (interface{}, error) {
//	    return client.Complete(ctx, req)
//	})
package resilience
