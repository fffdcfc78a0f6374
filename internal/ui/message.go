package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/petstore/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStoresFetched MsgKind = iota
	MsgStoreFetched
	MsgStoreDeleted
)

type storesFetched struct {
	stores []models.PetStoreData
	err    error
}

type storeFetched struct {
	store models.PetStoreData
	err   error
}

type storeDeleted struct {
	id  int64
	err error
}

// storesFetchedMsg is the constructor for [MsgStoresFetched]
func storesFetchedMsg(stores []models.PetStoreData, err error) Msg {
	return Msg{kind: MsgStoresFetched, data: storesFetched{stores, err}}
}

// storeFetchedMsg is the constructor for [MsgStoreFetched]
func storeFetchedMsg(store models.PetStoreData, err error) Msg {
	return Msg{kind: MsgStoreFetched, data: storeFetched{store, err}}
}

// storeDeletedMsg is the constructor for [MsgStoreDeleted]
func storeDeletedMsg(id int64, err error) Msg {
	return Msg{kind: MsgStoreDeleted, data: storeDeleted{id, err}}
}
