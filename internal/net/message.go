package net

import (
	"fmt"
	"net/url"
	"strings"

	"LocalBoard/internal/board"
)

// LinkScheme prefixes share links handed to people joining a board.
const LinkScheme = "localboard://"

// WSPath is where the host accepts websocket peers.
const WSPath = "/ws"

type MessageType string

const (
	MsgAdd   MessageType = "add"
	MsgClear MessageType = "clear"
	MsgSync  MessageType = "sync"
	MsgHello MessageType = "hello"
)

// Message is the only frame exchanged between host and peers. Each frame is
// one JSON object.
type Message struct {
	Type    MessageType        `json:"type"`
	Object  *board.ObjectJSON  `json:"object,omitempty"`
	Objects []board.ObjectJSON `json:"objects,omitempty"`
	OwnerID string             `json:"owner_id,omitempty"`
}

// Outbox is anything a session can push messages into: the host's hub or a
// peer's client connection.
type Outbox interface {
	Send(m Message) error
}

// ShareLink builds the link a host shows for others to join.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s:%d", LinkScheme, host, port)
}

// ParseLink turns a share link, or a bare host:port, into the websocket URL
// to dial.
func ParseLink(link string) (string, error) {
	addr := strings.TrimPrefix(strings.TrimSpace(link), LinkScheme)
	addr = strings.TrimSuffix(addr, "/")
	if addr == "" {
		return "", fmt.Errorf("net: empty link")
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: WSPath}
	if u.Hostname() == "" || u.Port() == "" {
		return "", fmt.Errorf("net: link %q: want host:port", link)
	}
	return u.String(), nil
}
