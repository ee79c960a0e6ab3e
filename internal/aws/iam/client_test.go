package iam

import (
	"context"
	"fmt"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockIAMAPI struct {
	listServerCertificatesFunc  func(ctx context.Context, params *awsiam.ListServerCertificatesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListServerCertificatesOutput, error)
	deleteServerCertificateFunc func(ctx context.Context, params *awsiam.DeleteServerCertificateInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteServerCertificateOutput, error)
}

func (m *mockIAMAPI) ListServerCertificates(ctx context.Context, params *awsiam.ListServerCertificatesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListServerCertificatesOutput, error) {
	return m.listServerCertificatesFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) DeleteServerCertificate(ctx context.Context, params *awsiam.DeleteServerCertificateInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteServerCertificateOutput, error) {
	return m.deleteServerCertificateFunc(ctx, params, optFns...)
}

func TestListServerCertificates(t *testing.T) {
	uploaded := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock := &mockIAMAPI{
		listServerCertificatesFunc: func(ctx context.Context, params *awsiam.ListServerCertificatesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListServerCertificatesOutput, error) {
			return &awsiam.ListServerCertificatesOutput{
				ServerCertificateMetadataList: []iamtypes.ServerCertificateMetadata{
					{
						ServerCertificateName: awssdk.String("prod-cert"),
						ServerCertificateId:   awssdk.String("ASCA123"),
						Arn:                   awssdk.String("arn:aws:iam::123:server-certificate/prod-cert"),
						Path:                  awssdk.String("/"),
						UploadDate:            &uploaded,
					},
				},
			}, nil
		},
	}

	client := NewClient(mock)
	certs, err := client.ListServerCertificates(context.Background())
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "prod-cert", certs[0].Name)
	assert.Equal(t, "arn:aws:iam::123:server-certificate/prod-cert", certs[0].ARN)
}

func TestListServerCertificates_Pagination(t *testing.T) {
	calls := 0
	mock := &mockIAMAPI{
		listServerCertificatesFunc: func(ctx context.Context, params *awsiam.ListServerCertificatesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListServerCertificatesOutput, error) {
			calls++
			if calls == 1 {
				return &awsiam.ListServerCertificatesOutput{
					ServerCertificateMetadataList: []iamtypes.ServerCertificateMetadata{
						{ServerCertificateName: awssdk.String("a"), Arn: awssdk.String("arn:a")},
					},
					IsTruncated: true,
					Marker:      awssdk.String("next"),
				}, nil
			}
			assert.Equal(t, "next", awssdk.ToString(params.Marker))
			return &awsiam.ListServerCertificatesOutput{
				ServerCertificateMetadataList: []iamtypes.ServerCertificateMetadata{
					{ServerCertificateName: awssdk.String("b"), Arn: awssdk.String("arn:b")},
				},
			}, nil
		},
	}

	certs, err := NewClient(mock).ListServerCertificates(context.Background())
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, "b", certs[1].Name)
	assert.Equal(t, 2, calls)
}

func TestListServerCertificates_Error(t *testing.T) {
	mock := &mockIAMAPI{
		listServerCertificatesFunc: func(ctx context.Context, params *awsiam.ListServerCertificatesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListServerCertificatesOutput, error) {
			return nil, fmt.Errorf("access denied")
		},
	}

	_, err := NewClient(mock).ListServerCertificates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListServerCertificates")
}

func TestDeleteServerCertificate(t *testing.T) {
	var deleted []string
	mock := &mockIAMAPI{
		deleteServerCertificateFunc: func(ctx context.Context, params *awsiam.DeleteServerCertificateInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteServerCertificateOutput, error) {
			name := awssdk.ToString(params.ServerCertificateName)
			if name == "locked" {
				return nil, fmt.Errorf("DeleteConflict")
			}
			deleted = append(deleted, name)
			return &awsiam.DeleteServerCertificateOutput{}, nil
		},
	}

	client := NewClient(mock)
	require.NoError(t, client.DeleteServerCertificate(context.Background(), "old-cert"))
	assert.Equal(t, []string{"old-cert"}, deleted)

	err := client.DeleteServerCertificate(context.Background(), "locked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DeleteServerCertificate(locked)")
}
