// Package regdb holds the register-database entity model: bit fields,
// registers, register sets, blocks, and the project that ties their
// instances together. The entities are attribute carriers; parameter
// resolution lives in the param subpackage and address flattening in the
// addrmap subpackage.
package regdb
