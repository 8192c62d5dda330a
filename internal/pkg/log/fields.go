/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"go.uber.org/zap"
)

// Log Fields.
const (
	FieldDefinitionID   = "definition-id"
	FieldDescriptorID   = "descriptor-id"
	FieldKey            = "key"
	FieldPath           = "path"
	FieldSchemaURI      = "schema-uri"
	FieldServiceName    = "service"
	FieldStatusEndpoint = "status-endpoint"
	FieldStoreName      = "store"
	FieldSubmissionID   = "submission-id"
	FieldTagName        = "tag"
	FieldTotal          = "total"
)

// WithDefinitionID sets the definition-id field.
func WithDefinitionID(value string) zap.Field {
	return zap.String(FieldDefinitionID, value)
}

// WithDescriptorID sets the descriptor-id field.
func WithDescriptorID(value string) zap.Field {
	return zap.String(FieldDescriptorID, value)
}

// WithKey sets the key field.
func WithKey(value string) zap.Field {
	return zap.String(FieldKey, value)
}

// WithPath sets the path field.
func WithPath(value string) zap.Field {
	return zap.String(FieldPath, value)
}

// WithSchemaURI sets the schema-uri field.
func WithSchemaURI(value string) zap.Field {
	return zap.String(FieldSchemaURI, value)
}

// WithServiceName sets the service field.
func WithServiceName(value string) zap.Field {
	return zap.String(FieldServiceName, value)
}

// WithStatusEndpoint sets the status-endpoint field.
func WithStatusEndpoint(value string) zap.Field {
	return zap.String(FieldStatusEndpoint, value)
}

// WithStoreName sets the store field.
func WithStoreName(value string) zap.Field {
	return zap.String(FieldStoreName, value)
}

// WithSubmissionID sets the submission-id field.
func WithSubmissionID(value string) zap.Field {
	return zap.String(FieldSubmissionID, value)
}

// WithTagName sets the tag field.
func WithTagName(value string) zap.Field {
	return zap.String(FieldTagName, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}
