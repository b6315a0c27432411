package main

import (
	"fmt"
	"strconv"

	"github.com/tidwall/redcon"
)

func (app *App) ping(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteString("PONG")
}

func (app *App) quit(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteString("OK")
	conn.Close()
}

func (app *App) count(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 1 {
		conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
		return
	}
	conn.WriteInt(len(app.records))
}

func (app *App) fields(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 1 {
		conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
		return
	}
	conn.WriteArray(len(app.schema.Fields))
	for _, f := range app.schema.Fields {
		conn.WriteBulkString(f.Name + ":" + f.Type.Name())
	}
}

func (app *App) get(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 {
		conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
		return
	}

	n, err := strconv.Atoi(string(cmd.Args[1]))
	if err != nil || n < 0 || n >= len(app.records) {
		conn.WriteError("ERR invalid row index " + string(cmd.Args[1]))
		return
	}

	rec := app.records[n]
	conn.WriteArray(len(rec.Values))
	for _, v := range rec.Values {
		if v == nil {
			conn.WriteNull()
			continue
		}
		conn.WriteBulkString(fmt.Sprintf("%v", v))
	}
}
