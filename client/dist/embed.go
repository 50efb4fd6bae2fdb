// Package clientdist embeds the browser runtime served to portal pages.
package clientdist

import _ "embed"

// RuntimeJS is the page runtime.
//
// It is served by the portal at "/assets/runtime.js".
//go:embed runtime.js
var RuntimeJS []byte
