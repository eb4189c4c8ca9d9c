// Codelens is a CLI and HTTP service that reviews source code with a Gemini
// model and reports structured issues plus a suggested fix.
//
// Usage:
//
//	codelens review main.go                 # review a file
//	cat util.py | codelens review --lang python
//	codelens review main.go --diff          # show the suggested fix
//	codelens review main.go --apply         # write the suggested fix
//	codelens serve --addr :8080             # run the HTTP API
//
// The API key is read from --api-key, GEMINI_API_KEY or GOOGLE_API_KEY. A
// .env file in the working directory is loaded first.
package main
