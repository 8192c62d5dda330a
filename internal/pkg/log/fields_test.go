/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

func TestFields(t *testing.T) {
	const module = "test_module"

	stdOut := newMockWriter()

	logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

	logger.Info("Some message",
		WithDefinitionID("def1"),
		WithDescriptorID("desc1"), WithKey("key1"),
		WithPath("$.credentialSubject.id"),
		WithSchemaURI("https://example.edu/schema/degree"),
		WithServiceName("service1"),
		WithStatusEndpoint("https://example.com/status/1"),
		WithStoreName("store1"), WithSubmissionID("sub1"),
		WithTagName("tag1"), WithTotal(3),
	)

	l := unmarshalLogData(t, stdOut.Bytes())

	require.Equal(t, "Some message", l.Msg)
	require.Equal(t, "def1", l.DefinitionID)
	require.Equal(t, "desc1", l.DescriptorID)
	require.Equal(t, "key1", l.Key)
	require.Equal(t, "$.credentialSubject.id", l.Path)
	require.Equal(t, "https://example.edu/schema/degree", l.SchemaURI)
	require.Equal(t, "service1", l.ServiceName)
	require.Equal(t, "https://example.com/status/1", l.StatusEndpoint)
	require.Equal(t, "store1", l.StoreName)
	require.Equal(t, "sub1", l.SubmissionID)
	require.Equal(t, "tag1", l.TagName)
	require.Equal(t, 3, l.Total)
}

type logData struct {
	Level  string `json:"level"`
	Time   string `json:"time"`
	Logger string `json:"logger"`
	Caller string `json:"caller"`
	Msg    string `json:"msg"`
	Error  string `json:"error"`

	DefinitionID   string `json:"definition-id"`
	DescriptorID   string `json:"descriptor-id"`
	Key            string `json:"key"`
	Path           string `json:"path"`
	SchemaURI      string `json:"schema-uri"`
	ServiceName    string `json:"service"`
	StatusEndpoint string `json:"status-endpoint"`
	StoreName      string `json:"store"`
	SubmissionID   string `json:"submission-id"`
	TagName        string `json:"tag"`
	Total          int    `json:"total"`
}

func unmarshalLogData(t *testing.T, b []byte) *logData {
	t.Helper()

	l := &logData{}

	require.NoError(t, json.Unmarshal(b, l))

	return l
}

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}
