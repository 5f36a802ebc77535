/*
Package lattice provides an n-dimensional container describing how service
endpoints are compartmentalized across fault-isolation dimensions.

Each dimension is a kind of dependency that may cause a correlated fault.
A one-dimensional lattice might spread endpoints across availability
zones:

	   us-east-1a     us-east-1b     us-east-1c
	+--------------+--------------+--------------+
	|              |              |              |
	| A B C D E F  | G H I J K L  |  M N O P Q R |
	|              |              |              |
	+--------------+--------------+--------------+

A two-dimensional lattice adds an orthogonal axis, for example the
software version running on each endpoint:

	          us-east-1a     us-east-1b     us-east-1c
	       +--------------+--------------+--------------+
	 v2.0  |     A B C    |     G H I    |    M N O     |
	       +--------------+--------------+--------------+
	 v2.1  |     D E F    |     J K L    |    P Q R     |
	       +--------------+--------------+--------------+

SimulateFailure removes an entire slice of the lattice — every sector
whose coordinate carries a given value in a given dimension — and returns
the surviving sub-lattice:

	SimulateFailure("AvailabilityZone", "us-east-1b") =

	          us-east-1a     us-east-1c
	       +--------------+--------------+
	 v2.0  |     A B C    |    M N O     |
	       +--------------+--------------+
	 v2.1  |     D E F    |    P Q R     |
	       +--------------+--------------+

Higher-dimensional lattices are permitted. Sector enumeration is always in
sorted coordinate order so that downstream plan generation is
deterministic for identical inputs.
*/
package lattice
