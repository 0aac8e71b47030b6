// Package server runs an http.Handler, typically a promisemux.Router, with
// graceful shutdown and production timeouts.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//	return g.Wait()
//
// Run starts the server and, once ctx is canceled, shuts it down within the
// configured shutdown timeout. In-flight requests whose handler chains are
// still waiting on deferred results keep the shutdown waiting until they
// settle or the timeout expires.
//
// Config is read through core/config from HTTP_* variables, usually under a
// service prefix (NOTES_HTTP_ADDR). TLS is enabled when both HTTP_TLS_CERT_FILE
// and HTTP_TLS_KEY_FILE are set; setting only one is an error.
package server
