/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package chat

import "context"

// Mock is a canned chat client for tests. It records the last request so
// callers can assert on the prompt and history they sent.
type Mock struct {
	Response    string
	Err         error
	LastRequest *Request
}

func (m *Mock) Send(_ context.Context, req Request) (string, error) {
	m.LastRequest = &req
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *Mock) Ping(_ context.Context) bool {
	return m.Err == nil
}
