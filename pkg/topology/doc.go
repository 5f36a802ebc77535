/*
Package topology defines the boundary data formats: the YAML document
describing an endpoint population and the JSON encoding of a finished
provisioning plan.
*/
package topology
