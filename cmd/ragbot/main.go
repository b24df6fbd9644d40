// Command ragbot runs the RAG chatbot and its ingestion tooling.
package main

func main() {
	Execute()
}
