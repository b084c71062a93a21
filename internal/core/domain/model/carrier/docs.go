// Package carrier contains the Carrier aggregate and the Driver and Vehicle
// entities it owns. A shipment may only be assigned a driver and a vehicle of
// its own carrier.
package carrier
