// Package client defines the collaborator that transmits events, and the
// options the scope and tracing engines read from it.
//
// The scope and tracing packages depend only on the Client interface:
//
//	type Client interface {
//		IsActive() bool
//		Options() Options
//		CaptureEvent(e *event.Event) (event.ID, bool)
//	}
//
// LogClient is the implementation shipped with this module. It encodes each
// event as JSON and writes it to the structured logger, which is enough for
// local development and for tests. Network transports live outside this
// module and only need to satisfy Client.
//
// # Configuration
//
// Config is read from the environment with the SCOPEKIT prefix:
//
//	SCOPEKIT_ENABLED=true
//	SCOPEKIT_SAMPLE_RATE=0.25   # unset disables tracing entirely
//	SCOPEKIT_ENVIRONMENT=production
//	SCOPEKIT_RELEASE=my-service@1.4.2
//
//	cfg, err := client.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := client.NewLogClient(cfg, loggerClient)
//
// # Sampling Options
//
// Options.SampleRate nil means tracing is disabled. Options.TracesSampler,
// when set, takes priority over SampleRate for transactions. The sampler is
// called without synchronization and must be safe for concurrent use.
package client
