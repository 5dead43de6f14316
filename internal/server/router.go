package server

import (
	"context"
	"net/http"

	"pureui/internal/handlers"
	applog "pureui/internal/log"
)

func newRouter(staticDir string) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/healthz", handlers.Health},
		{"/api/theme", handlers.Theme},
		{"/preferences/theme", handlers.UpdateTheme},
		{"/api/date", handlers.FormatDate},
		{"/api/toast", handlers.ShowToast},
		{"/", handlers.Home},
	}
	for _, route := range routes {
		mux.HandleFunc(route.path, route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.path)
	}

	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
