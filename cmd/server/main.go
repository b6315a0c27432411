package main

import (
	"github.com/tidwall/redcon"
	"github.com/zerodha/logf"

	"github.com/yxdb-io/yxdb/pkg/yxdb"
)

var (
	// Version of the build. This is injected at build-time.
	buildString = "unknown"
)

// App serves rows of one immutable table file over RESP.
type App struct {
	lo      logf.Logger
	header  *yxdb.Header
	schema  *yxdb.RecordInfo
	records []yxdb.Record
}

func main() {
	ko, err := initConfig()
	if err != nil {
		panic(err)
	}
	lo := initLogger(ko)
	lo.Info("booting server", "version", buildString, "file", ko.String("app.file"))

	var opts []yxdb.Option
	if ko.String("app.log") == "debug" {
		opts = append(opts, yxdb.WithDebug())
	}

	rd, err := yxdb.OpenFile(ko.String("app.file"), opts...)
	if err != nil {
		lo.Fatal("error opening table file", "error", err)
	}

	// The table is immutable, so the whole record stream is loaded up
	// front and served from memory.
	records, err := rd.Records()
	if err != nil {
		lo.Fatal("error reading records", "error", err)
	}
	app := &App{
		lo:      lo,
		header:  rd.Header(),
		schema:  rd.RecordInfo(),
		records: records,
	}
	if err := rd.Close(); err != nil {
		lo.Error("error closing table file", "error", err)
	}
	lo.Info("loaded table", "records", len(records), "fields", len(app.schema.Fields))

	mux := redcon.NewServeMux()
	mux.HandleFunc("ping", app.ping)
	mux.HandleFunc("quit", app.quit)
	mux.HandleFunc("count", app.count)
	mux.HandleFunc("fields", app.fields)
	mux.HandleFunc("get", app.get)

	if err := redcon.ListenAndServe(ko.String("app.address"),
		mux.ServeRESP,
		func(conn redcon.Conn) bool {
			// use this function to accept or deny the connection.
			return true
		},
		func(conn redcon.Conn, err error) {
			// this is called when the connection has been closed
		},
	); err != nil {
		lo.Fatal("error starting server", "error", err)
	}
}
