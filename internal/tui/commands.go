package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/laptopstore/internal/model"
)

// API is the slice of the laptopstore client the screen needs.
type API interface {
	List(ctx context.Context) ([]model.Laptop, error)
	Create(ctx context.Context, l model.Laptop) (model.Laptop, error)
	Update(ctx context.Context, id int64, l model.Laptop) (model.Laptop, error)
	Delete(ctx context.Context, id int64) error
}

type laptopsLoadedMsg struct{ laptops []model.Laptop }

type savedMsg struct {
	laptop  model.Laptop
	updated bool
}

type deletedMsg struct{ id int64 }

// errMsg carries a failed call back to Update, which only logs it.
type errMsg struct {
	action string
	err    error
}

func fetchCmd(ctx context.Context, api API) tea.Cmd {
	return func() tea.Msg {
		laptops, err := api.List(ctx)
		if err != nil {
			return errMsg{action: "fetching laptops", err: err}
		}
		return laptopsLoadedMsg{laptops: laptops}
	}
}

// saveCmd creates l, or updates it when it already carries an id.
func saveCmd(ctx context.Context, api API, l model.Laptop) tea.Cmd {
	return func() tea.Msg {
		if l.ID != 0 {
			out, err := api.Update(ctx, l.ID, l)
			if err != nil {
				return errMsg{action: "updating laptop", err: err}
			}
			return savedMsg{laptop: out, updated: true}
		}
		out, err := api.Create(ctx, l)
		if err != nil {
			return errMsg{action: "creating laptop", err: err}
		}
		return savedMsg{laptop: out}
	}
}

func deleteCmd(ctx context.Context, api API, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := api.Delete(ctx, id); err != nil {
			return errMsg{action: "deleting laptop", err: err}
		}
		return deletedMsg{id: id}
	}
}
