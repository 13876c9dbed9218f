/*
Copyright © 2026 Snahkx
*/

package main

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
)

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
