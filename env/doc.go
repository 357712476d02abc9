// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("MY_VAR")

# Testing

The Reader interface allows injecting a fixed map in tests to avoid relying
on real environment variables:

	reader := env.MapReader{"MY_VAR": "test-value"}

	result := myFunc(reader)

# Design

This package follows the interface-based dependency injection pattern used
throughout skillsmith. Production code accepts an env.Reader, while tests
substitute a MapReader.
*/
package env
