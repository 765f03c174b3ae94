package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type ResumeStore struct{ mock.Mock }

func (m *ResumeStore) Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, filename, r, size)
	return args.String(0), args.Error(1)
}

func (m *ResumeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *ResumeStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
