// Command server runs the platform backend: the workspace API, websocket
// collaboration, the AI completion proxy and the metrics exposition listener.
package main
