package main

// General API documentation for swaggo. Run `make swagger-gen` to regenerate docs.
//
// @title           penguind API
// @version         1.0
// @description     HTTP API serving pre-trained penguin species classification pipelines.
//
// @contact.name   penguind maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
