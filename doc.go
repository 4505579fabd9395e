// Package main provides the entry point for the PollHive service.
// It runs a Fiber web server exposing a JSON API for group-based polling:
// users join groups with roles through constrained invite links, groups
// own polls, and polls collect votes through share links and targeted
// invites. Data is persisted with gorm.
package main
