// Package dialect defines the value types shared by every slangify
// component: the fourteen Kerala districts in their canonical order, the
// slang intensity scale, the request and result shapes of each capability
// and the error taxonomy used to report failures.
package dialect
