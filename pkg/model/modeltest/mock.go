// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package modeltest provides a testify mock of model.Client.
package modeltest

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/walteh/codemod/pkg/model"
)

// 🧪 MockClient is a mock implementation of model.Client
type MockClient struct {
	mock.Mock
}

var _ model.Client = (*MockClient)(nil)

// NewMockClient creates a mock and asserts its expectations when the test ends
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Complete implements model.Client
func (m *MockClient) Complete(ctx context.Context, req model.CompletionRequest) (*model.Response, error) {
	args := m.Called(ctx, req)

	var resp *model.Response
	if rf, ok := args.Get(0).(func(context.Context, model.CompletionRequest) *model.Response); ok {
		resp = rf(ctx, req)
	} else if args.Get(0) != nil {
		resp = args.Get(0).(*model.Response)
	}

	return resp, args.Error(1)
}

// Edit implements model.Client
func (m *MockClient) Edit(ctx context.Context, req model.EditRequest) (*model.Response, error) {
	args := m.Called(ctx, req)

	var resp *model.Response
	if rf, ok := args.Get(0).(func(context.Context, model.EditRequest) *model.Response); ok {
		resp = rf(ctx, req)
	} else if args.Get(0) != nil {
		resp = args.Get(0).(*model.Response)
	}

	return resp, args.Error(1)
}

// Choices builds a response with the given choices
func Choices(choices ...string) *model.Response {
	return &model.Response{Choices: choices}
}

// EditOf matches an EditRequest by its input
func EditOf(input string) any {
	return mock.MatchedBy(func(req model.EditRequest) bool {
		return req.Input == input
	})
}
