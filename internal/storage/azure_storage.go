package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

type azureBlobSource struct {
	client *azblob.Client
}

// NewAzureBlobSource builds a BlobSource backed by an Azure storage account
// using shared key credentials.
func NewAzureBlobSource(accountName string, accountKey string) (BlobSource, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureBlobSource{client: client}, nil
}

func (s *azureBlobSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	container, name := SplitBlobPath(path)

	resp, err := s.client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, path)
		}
		return nil, fmt.Errorf("%w: download %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}
	return data, nil
}

func (s *azureBlobSource) List(ctx context.Context, container string) ([]BlobInfo, error) {
	var blobs []BlobInfo

	pager := s.client.NewListBlobsFlatPager(container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", ErrUnavailable, container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			info := BlobInfo{Name: *item.Name}
			if item.Properties != nil && item.Properties.ContentLength != nil {
				info.SizeBytes = *item.Properties.ContentLength
			}
			blobs = append(blobs, info)
		}
	}
	return blobs, nil
}
