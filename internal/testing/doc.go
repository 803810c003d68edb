// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - SpecBuilder: Fluent builder for creating test cluster specs
//   - MockProvider, MockRemote, MockFetcher: testify mocks for the provisioning boundaries
//   - RecordingObserver: Observer that keeps every line for assertions
//   - RunningInstances: instance fixtures in discovery order
//
// Usage:
//
//	spec := testkit.NewSpecBuilder().
//	    WithName("test").
//	    WithNodeCount(3).
//	    Build()
//
//	provider := &testkit.MockProvider{}
//	provider.On("ListClusterInstances", mock.Anything, "test").Return(nil, nil)
package testing
