/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

const (
	// ProgramName is the name of the application
	ProgramName = "Preceptor"

	// Version is the current version of the application
	Version = "0.1.2"
)
