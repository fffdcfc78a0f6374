package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	StoreListView ViewState = iota
	StoreDetailView
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	service    services.Service
	width      int
	height     int
	storeList  list.Model
	detailList list.Model
	selected   *models.PetStoreData
	returnTo   ViewState
	status     string
	err        error
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model backed by service.
func NewModel(ctx context.Context, service services.Service) *Model {
	m := &Model{
		ctx:     ctx,
		view:    StoreListView,
		service: service,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.storeList = newList("Pet Stores", nil)
	m.detailList = newList("", nil)
	return m
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// View returns the active view.
func (m *Model) View() string {
	if m.err != nil {
		return styles.Err(fmt.Sprintf("Error: %v\n\nPress esc to go back, q to quit", m.err))
	}

	switch m.view {
	case StoreListView:
		return m.renderStoreList()
	case StoreDetailView:
		return m.renderStoreDetail()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

// State returns the active view state.
func (m *Model) State() ViewState { return m.view }

// Init initializes the TUI by fetching store summaries.
func (m *Model) Init() tea.Cmd {
	return m.fetchStores()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.storeList.SetSize(msg.Width-4, msg.Height-8)
		m.detailList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			return m.handleErrorKeys(msg)
		}
		switch m.view {
		case StoreListView:
			return m.handleStoreListKeys(msg)
		case StoreDetailView:
			return m.handleStoreDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch data := msg.data.(type) {
	case storesFetched:
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		cmd := m.storeList.SetItems(storeItems(data.stores))
		return m, cmd

	case storeFetched:
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		store := data.store
		m.selected = &store
		m.detailList = newList(fmt.Sprintf("%s (ID=%d)", store.StoreName, store.StoreID()), memberItems(store))
		m.detailList.SetSize(m.width-4, m.height-8)
		m.view = StoreDetailView
		return m, nil

	case storeDeleted:
		m.view = StoreListView
		m.selected = nil
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.status = fmt.Sprintf("Pet store with ID=%d was deleted successfully.", data.id)
		return m, m.fetchStores()
	}
	return m, nil
}

func (m *Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.err = nil
		m.view = StoreListView
		return m, m.fetchStores()
	}
	return m, nil
}

func (m *Model) handleStoreListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.storeList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.storeList, cmd = m.storeList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.status = ""
		return m, m.fetchStores()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.storeList.SelectedItem().(storeItem); ok {
			return m, m.fetchStore(item.store.StoreID())
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.storeList.SelectedItem().(storeItem); ok {
			store := item.store
			m.selected = &store
			m.returnTo = StoreListView
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.storeList, cmd = m.storeList.Update(msg)
	return m, cmd
}

func (m *Model) handleStoreDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = StoreListView
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.remove):
		m.returnTo = StoreDetailView
		m.view = ConfirmDeleteView
		return m, nil
	}

	var cmd tea.Cmd
	m.detailList, cmd = m.detailList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		if m.selected == nil {
			m.view = StoreListView
			return m, nil
		}
		return m, m.deleteStore(m.selected.StoreID())
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = m.returnTo
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case StoreListView:
		m.storeList, cmd = m.storeList.Update(msg)
	case StoreDetailView:
		m.detailList, cmd = m.detailList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchStores() tea.Cmd {
	return func() tea.Msg {
		stores, err := m.service.RetrieveAllPetStores(m.ctx)
		return storesFetchedMsg(stores, err)
	}
}

func (m *Model) fetchStore(id int64) tea.Cmd {
	return func() tea.Msg {
		store, err := m.service.RetrievePetStoreByID(m.ctx, id)
		return storeFetchedMsg(store, err)
	}
}

func (m *Model) deleteStore(id int64) tea.Cmd {
	return func() tea.Msg {
		return storeDeletedMsg(id, m.service.DeletePetStoreByID(m.ctx, id))
	}
}

func (m *Model) renderStoreList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	status := ""
	if m.status != "" {
		status = "\n" + styles.OK(m.status)
	}
	return fmt.Sprintf("%s%s\n\n%s", m.storeList.View(), status, helpView)
}

func (m *Model) renderStoreDetail() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.remove, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	counts := ""
	if m.selected != nil {
		counts = styles.Help(fmt.Sprintf("%d employees • %d customers", len(m.selected.Employees), len(m.selected.Customers)))
	}
	return fmt.Sprintf("%s\n%s\n\n%s", m.detailList.View(), counts, helpView)
}

func (m *Model) renderConfirm() string {
	if m.selected == nil {
		return ""
	}
	title := styles.Title(fmt.Sprintf("Delete '%s'?", m.selected.StoreName))
	info := styles.Warn(fmt.Sprintf("Pet store ID=%d and all of its employees will be removed. Customers are kept.", m.selected.StoreID()))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
