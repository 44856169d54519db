// netforge generates ready-to-build Go network service projects from
// small YAML configs: TCP echo servers, TCP worker-pool servers and HTTP
// services.
package main

func main() {
	Execute()
}
