package model

type Session struct {
	Strategy   string
	LastTicker string
}
