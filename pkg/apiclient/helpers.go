package apiclient

import "fmt"

// Generic wrappers over Client.get/post/put/delete shared by the
// resource files in this package. Each decodes the response body into
// the requested type.

// getResource fetches a single resource.
//
//	share, err := getResource[Share](c, "/api/v1/shares/a1b2c3")
func getResource[T any](c *Client, path string) (*T, error) {
	var result T
	if err := c.get(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// listResources fetches a resource collection.
//
//	shares, err := listResources[Share](c, "/api/v1/shares")
func listResources[T any](c *Client, path string) ([]T, error) {
	var results []T
	if err := c.get(path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// createResource posts body and decodes the created resource.
//
//	share, err := createResource[Share](c, "/api/v1/shares", req)
func createResource[T any](c *Client, path string, body any) (*T, error) {
	var result T
	if err := c.post(path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// updateResource puts body and decodes the updated resource.
//
//	volume, err := updateResource[Volume](c, "/api/v1/volumes/"+id, req)
func updateResource[T any](c *Client, path string, body any) (*T, error) {
	var result T
	if err := c.put(path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// deleteResource issues a DELETE with no response body.
func deleteResource(c *Client, path string) error {
	return c.delete(path, nil)
}

// resourcePath formats a path template, e.g.
// resourcePath("/api/v1/users/%s", username).
func resourcePath(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
