// Package http contains the HTTP handlers for the survey cleaning
// service: the upload endpoint and the health surface.
package http
