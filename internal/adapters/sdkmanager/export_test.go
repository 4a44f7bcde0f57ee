package sdkmanager

import "io"

// NewYes exposes the license answer reader.
func NewYes() io.Reader { return &yes{} }
