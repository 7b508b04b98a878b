package mocks

import (
	"context"

	"github.com/lmgveerhoek/rescan/core/plex"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of plex.Client
type Client struct {
	mock.Mock
}

func (m *Client) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) Sections(ctx context.Context) ([]plex.Section, error) {
	args := m.Called(ctx)
	if sections, ok := args.Get(0).([]plex.Section); ok {
		return sections, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SectionFiles(ctx context.Context, section plex.Section) ([]string, error) {
	args := m.Called(ctx, section)
	if files, ok := args.Get(0).([]string); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) RefreshPath(ctx context.Context, sectionID, folder string) error {
	args := m.Called(ctx, sectionID, folder)
	return args.Error(0)
}
