// Command slicerweb serves the wall-mount slicer over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"github.com/Rohesie/wallmount-slicer/layout"
	"github.com/Rohesie/wallmount-slicer/paths"
	"github.com/Rohesie/wallmount-slicer/web"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for slicerweb")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server will listen")
	maxSheetBytes  = flag.Int64("max_sheet_bytes", web.DefaultMaxSheetBytes, "largest accepted upload")

	configPath string
)

func main() {
	paths.SetupFilePathFlag(flag.CommandLine, layout.ConfigFileName, "config", "layout config", &configPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	l, err := layout.Load(configPath)
	if err != nil {
		glog.Exitf("cannot serve without a layout: %v", err)
	}

	if *debugWebServer != "" {
		// x/net/trace registers /debug/requests on the default mux.
		go func() {
			glog.Errorln(http.ListenAndServe(*debugWebServer, nil))
		}()
	}

	h := web.NewHandler(l)
	h.MaxSheetBytes = *maxSheetBytes

	r := mux.NewRouter()
	h.RegisterRoutes(r)

	glog.Infof("slicerweb listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stderr, r))))
}
