// Package project locates and checks the target project a command runs in.
//
// Validator confirms the working directory holds a package.json that
// declares this tool as a devDependency. Layout maps a project root and the
// tool's installation root to the fixed paths the scaffold and build
// packages read and write.
package project
