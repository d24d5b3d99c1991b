package mocks

import (
	"context"
	"io"

	"object-storage/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) StatObject(ctx context.Context, bucketName, objectName string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *Client) ListPage(ctx context.Context, bucketName string, opts storage.ListOptions) (storage.ListPage, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).(storage.ListPage), args.Error(1)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts storage.PutOptions) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Error(0)
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *Client) CopyObject(ctx context.Context, bucketName, srcObject, destObject string) error {
	args := m.Called(ctx, bucketName, srcObject, destObject)
	return args.Error(0)
}

func (m *Client) UploadFile(ctx context.Context, bucketName, objectName, filePath string, opts storage.TransferOptions) error {
	args := m.Called(ctx, bucketName, objectName, filePath, opts)
	return args.Error(0)
}

func (m *Client) DownloadFile(ctx context.Context, bucketName, objectName, filePath string, opts storage.TransferOptions) error {
	args := m.Called(ctx, bucketName, objectName, filePath, opts)
	return args.Error(0)
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}
