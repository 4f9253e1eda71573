// Package utils provides common utility functions for the app-inventory application.
// It includes loose-type conversion helpers for values decoded from third-party JSON,
// and timestamp normalization to epoch seconds.
package utils
