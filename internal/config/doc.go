// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional installer configuration. The module and
// prerequisite catalogs are fixed at build time; the config file only lets a
// user pick the install root, point at a repository mirror, and default the
// verbosity. An absent file means defaults; a present but invalid file stops
// the run before anything is touched.
package config
