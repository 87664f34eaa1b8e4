// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import "time"

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
