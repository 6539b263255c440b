// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package invariants

import "github.com/dbkit-io/dbkit/internal/buildtags"

// RaceEnabled is true if we were built with the "race" build tag.
const RaceEnabled = buildtags.Race
