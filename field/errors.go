// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package field

import "errors"

// ErrNumericUndefined marks an operation with no defined result, such as
// inverting zero. Callers in the HAL wrap this as a fatal error per
// spec.md §7 ("numeric undefined").
var ErrNumericUndefined = errors.New("field: numeric operation undefined")
