package ec2

import (
	"context"
	"fmt"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEC2API struct {
	describeInstancesFunc func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
}

func (m *mockEC2API) DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
	return m.describeInstancesFunc(ctx, params, optFns...)
}

func TestListInstances(t *testing.T) {
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
			assert.Empty(t, params.InstanceIds)
			return &awsec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{
					{Instances: []types.Instance{
						{
							InstanceId: awssdk.String("i-abc123"),
							State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
							Placement:  &types.Placement{AvailabilityZone: awssdk.String("us-east-1a")},
						},
						{InstanceId: awssdk.String("i-noplace")},
					}},
					{Instances: []types.Instance{
						{
							InstanceId: awssdk.String("i-def456"),
							State:      &types.InstanceState{Name: types.InstanceStateNameStopped},
							Placement:  &types.Placement{AvailabilityZone: awssdk.String("us-east-1c")},
						},
					}},
				},
			}, nil
		},
	}

	instances, err := NewClient(mock).ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 3)
	assert.Equal(t, EC2Instance{InstanceID: "i-abc123", AvailabilityZone: "us-east-1a"}, instances[0])
	assert.Equal(t, EC2Instance{InstanceID: "i-noplace"}, instances[1])
	assert.Equal(t, "us-east-1c", instances[2].AvailabilityZone)
}

func TestListInstances_Pagination(t *testing.T) {
	calls := 0
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
			calls++
			if calls == 1 {
				return &awsec2.DescribeInstancesOutput{
					Reservations: []types.Reservation{{Instances: []types.Instance{{InstanceId: awssdk.String("i-1")}}}},
					NextToken:    awssdk.String("tok"),
				}, nil
			}
			assert.Equal(t, "tok", awssdk.ToString(params.NextToken))
			return &awsec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{{Instances: []types.Instance{{InstanceId: awssdk.String("i-2")}}}},
			}, nil
		},
	}

	instances, err := NewClient(mock).ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, 2, calls)
}

func TestListInstances_Error(t *testing.T) {
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
			return nil, fmt.Errorf("unauthorized")
		},
	}

	_, err := NewClient(mock).ListInstances(context.Background())
	require.ErrorContains(t, err, "DescribeInstances")
}
