package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/petstore/internal/models"
)

var (
	_ list.Item = storeItem{}
	_ list.Item = memberItem{}
)

// storeItem wraps a store summary to implement [list.Item].
type storeItem struct {
	store models.PetStoreData
}

func (i storeItem) FilterValue() string { return i.store.StoreName }
func (i storeItem) Title() string       { return i.store.StoreName }
func (i storeItem) Description() string { return fmt.Sprintf("ID=%d", i.store.StoreID()) }

// memberItem is an employee or customer row in the detail view.
type memberItem struct {
	name string
	desc string
}

func (i memberItem) FilterValue() string { return i.name }
func (i memberItem) Title() string       { return i.name }
func (i memberItem) Description() string { return i.desc }

func storeItems(stores []models.PetStoreData) []list.Item {
	items := make([]list.Item, len(stores))
	for i, s := range stores {
		items[i] = storeItem{store: s}
	}
	return items
}

// memberItems lists employees first, then customers, each in id order.
func memberItems(store models.PetStoreData) []list.Item {
	items := make([]list.Item, 0, len(store.Employees)+len(store.Customers))
	for _, e := range store.Employees {
		items = append(items, memberItem{name: e.EmployeeName, desc: fmt.Sprintf("employee #%d", e.EmployeeID())})
	}
	for _, c := range store.Customers {
		items = append(items, memberItem{name: c.CustomerName, desc: fmt.Sprintf("customer #%d • %s", c.CustomerID(), c.CustomerEmail)})
	}
	return items
}
