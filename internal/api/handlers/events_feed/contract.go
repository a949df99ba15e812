package events_feed

import "github.com/gorilla/websocket"

type Feed interface {
	Serve(conn *websocket.Conn, userID string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
