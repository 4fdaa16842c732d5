// Package httpserver runs the notifier's HTTP surface.
//
// Server binds a listener, serves until the run context is cancelled and
// then drains in-flight requests within the shutdown timeout:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// LivenessHandler and ReadinessHandler back the /health/live and
// /health/ready probes. Readiness checks are named; a failing check is logged
// with its name and turns the probe into 503 NOT_READY.
package httpserver
